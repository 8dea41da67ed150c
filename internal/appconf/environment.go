package appconf

import "strings"

type Environment int

const (
	Development Environment = iota
	Test
	Staging
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Staging:
		return "staging"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag to an Environment. Unknown values mean Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "staging":
		return Staging
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
