package version

const (
	AppName    = "Fermata"
	AppVersion = "0.3.0"
)
