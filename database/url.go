package database

import "net/url"

// ConstructDatabaseURL sets the database name on a base Postgres URL and
// defaults sslmode to disable when the base URL does not specify one. A
// blank database name returns the base URL unchanged, so operators can
// supply a fully-formed DATABASE_URL directly. Unparseable input is also
// returned as-is and left for the pool to reject.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	u.Path = "/" + databaseName

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
		u.RawQuery = query.Encode()
	}

	return u.String()
}
