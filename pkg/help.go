package websubhub

import (
	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
)

// Help generates the settings documentation for every build mode.
func Help() string {
	hubGrp, _ := settings.GroupFromComponent(&HubComponent{})
	lambdaGrp, _ := settings.GroupFromComponent(NewLambdaComponent(nil))
	rtGrp, _ := settings.GroupFromComponent(runhttp.NewComponent())
	return settings.ExampleEnvGroups([]settings.Group{&settings.SettingGroup{
		NameValue:   EnvPrefix,
		GroupValues: []settings.Group{hubGrp, lambdaGrp, rtGrp},
	}})
}
