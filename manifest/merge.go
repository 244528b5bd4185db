package manifest

// mergeRule says what happens to a key a template declares when it is
// merged into the app manifest.
type mergeRule int

const (
	// ruleReplace replaces the app value wholesale. Default for any
	// key not listed in the policy table.
	ruleReplace mergeRule = iota
	// ruleBlacklist never copies the template value.
	ruleBlacklist
	// ruleMerge combines the template map with the app map, template
	// entries winning on conflict.
	ruleMerge
)

// mergePolicy is the rule table for template-declared manifest keys.
// Identity and publishing metadata belong to the generated app, never
// the template.
var mergePolicy = map[string]mergeRule{
	"name":                 ruleBlacklist,
	"version":              ruleBlacklist,
	"description":          ruleBlacklist,
	"keywords":             ruleBlacklist,
	"bugs":                 ruleBlacklist,
	"license":              ruleBlacklist,
	"author":               ruleBlacklist,
	"contributors":         ruleBlacklist,
	"files":                ruleBlacklist,
	"browser":              ruleBlacklist,
	"bin":                  ruleBlacklist,
	"man":                  ruleBlacklist,
	"directories":          ruleBlacklist,
	"repository":           ruleBlacklist,
	"peerDependencies":     ruleBlacklist,
	"bundledDependencies":  ruleBlacklist,
	"optionalDependencies": ruleBlacklist,
	"engineStrict":         ruleBlacklist,
	"os":                   ruleBlacklist,
	"cpu":                  ruleBlacklist,
	"preferGlobal":         ruleBlacklist,
	"private":              ruleBlacklist,
	"publishConfig":        ruleBlacklist,

	"dependencies": ruleMerge,
	"scripts":      ruleMerge,
}

// defaultScripts are always present in the merged manifest unless the
// template overrides an entry of the same name.
var defaultScripts = map[string]interface{}{
	"start": "react-scripts start",
	"build": "react-scripts build",
	"test":  "react-scripts test",
	"eject": "react-scripts eject",
}

// eslintConfig and browserslist are injected unconditionally, replacing
// any value the app or template carries.
var eslintConfig = map[string]interface{}{
	"extends": []interface{}{"react-app", "react-app/jest"},
}

var browserslist = map[string]interface{}{
	"production": []interface{}{
		">0.2%",
		"not dead",
		"not op_mini all",
	},
	"development": []interface{}{
		"last 1 chrome version",
		"last 1 firefox version",
		"last 1 safari version",
	},
}

// Merge folds the template's declared package fields into the app
// manifest according to the policy table, seeds the default scripts,
// rewrites script invocations for the chosen package manager, and
// injects the fixed lint and browser-support configuration. The app
// manifest is mutated in place.
func Merge(app Manifest, templatePackage map[string]interface{}, manager PackageManager) {
	scripts := make(map[string]interface{}, len(defaultScripts))
	for name, cmd := range defaultScripts {
		scripts[name] = cmd
	}

	for key, value := range templatePackage {
		switch ruleFor(key) {
		case ruleBlacklist:
			continue
		case ruleMerge:
			switch key {
			case "scripts":
				if declared, ok := value.(map[string]interface{}); ok {
					for name, cmd := range declared {
						scripts[name] = cmd
					}
				}
			case "dependencies":
				deps := app.Dependencies()
				if deps == nil {
					deps = make(map[string]interface{})
					app["dependencies"] = deps
				}
				if declared, ok := value.(map[string]interface{}); ok {
					for name, version := range declared {
						deps[name] = version
					}
				}
			}
		case ruleReplace:
			app[key] = value
		}
	}

	for name, cmd := range scripts {
		if s, ok := cmd.(string); ok {
			scripts[name] = manager.RewriteScript(s)
		}
	}
	app["scripts"] = scripts

	app["eslintConfig"] = eslintConfig
	app["browserslist"] = browserslist
}

func ruleFor(key string) mergeRule {
	if rule, ok := mergePolicy[key]; ok {
		return rule
	}
	return ruleReplace
}
