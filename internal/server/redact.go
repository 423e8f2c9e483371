package server

import "strings"

// redactURI replaces the userinfo of a connection string before it is
// logged. Multi-host MongoDB URIs are not valid net/url input, so the
// authority is split by hand.
func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	authority, path, hasPath := strings.Cut(rest, "/")
	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return uri
	}

	out := scheme + "://xxxxx@" + authority[at+1:]
	if hasPath {
		out += "/" + path
	}
	return out
}
