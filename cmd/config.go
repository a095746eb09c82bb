package cmd

// Config carries everything the composition root needs to wire the
// application, loaded from the environment in main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BlingAPIBase     string
	BlingAccessToken string

	MandaeAPIBase       string
	MandaeAPIToken      string
	MandaeWebhookSecret string
}
