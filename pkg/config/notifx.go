package config

// NotifxConfig selects the provider that delivers invitation emails.
type NotifxConfig struct {
	// Provider is "console" or "ses".
	Provider    string
	FromAddress string
	FromName    string
	AWSRegion   string
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:    getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress: getEnv("NOTIFX_FROM_ADDRESS", "no-reply@riderota.com"),
		FromName:    getEnv("NOTIFX_FROM_NAME", "Riderota"),
		AWSRegion:   getEnv("NOTIFX_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
	}
}
