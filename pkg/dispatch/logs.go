package dispatch

type unexpectedHandlerError struct {
	Reason         string `logevent:"reason"`
	ErrorType      string `logevent:"error_type"`
	Operation      string `logevent:"operation"`
	ParentFunction string `logevent:"parent_function"`
	Module         string `logevent:"module"`
	Version        string `logevent:"version"`
	Message        string `logevent:"message,default=unexpected-handler-error"`
}

type duplicateCompletion struct {
	Operation      string `logevent:"operation"`
	ParentFunction string `logevent:"parent_function"`
	Message        string `logevent:"message,default=duplicate-completion"`
}
