package cmd

// Config holds all runtime settings, populated from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PickupOtpRequired controls what a successful claim transitions the
	// order to: awaiting_pickup_verification when true (the default),
	// in_transit when the deployment runs without counter verification.
	PickupOtpRequired bool
}
