package gmail

// Config holds the Gmail API settings.
type Config struct {
	CredentialsFile string // OAuth client secret downloaded from the Cloud console
	TokenFile       string // Cached OAuth token, created on first login
	FetchLimit      int    // Messages fetched per label
}

const defaultFetchLimit = 20

func (c *Config) fetchLimit() int64 {
	if c.FetchLimit <= 0 {
		return defaultFetchLimit
	}
	return int64(c.FetchLimit)
}
