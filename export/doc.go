// Package export downloads the XML dictionary export from a jbovlaste
// server.
//
// The export page requires an authenticated session, so a Client first
// posts the login form (keeping the session cookie in its jar) and then
// requests the export for one natural language:
//
//	c, err := export.New(export.DefaultBaseURL, "en", 10*time.Minute)
//	...
//	data, err := c.Export(ctx, username, password)
//
// The returned bytes are passed unchanged to dictionary.Parse.
package export
