package naming

// FallbackSuffix is appended to a primary hostname to name its privileged
// fallback instance.
const FallbackSuffix = "-priv"

func Hostname(app string) string {
	return app
}

func FallbackHostname(primaryHostname string) string {
	return primaryHostname + FallbackSuffix
}

func OperatorUser(app string) string {
	return app
}
