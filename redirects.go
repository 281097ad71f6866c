package main

import (
	"bufio"
	"io"
	"strings"
)

const redirectMapHeader = "# Mapping of legacy blog URL into the new format\n"

// writeRedirectMap writes "old new" lines for every legacy URL.
func writeRedirectMap(x *Index, w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(redirectMapHeader)
	for _, key := range x.RedirectKeys() {
		bw.WriteString(key)
		bw.WriteByte(' ')
		bw.WriteString(x.redirects[key])
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// writeProxyRedirectMap writes a map usable by an nginx "map" block: keys
// below the old permalink prefix, values below the blog location, spaces
// escaped. Keys that collide after escaping are written once.
func writeProxyRedirectMap(x *Index, w io.Writer) error {
	bw := bufio.NewWriter(w)
	written := make(map[string]bool)
	for _, key := range x.RedirectKeys() {
		realKey := proxyMapString(key, x.conf.WebBlogLocation, x.conf.PlinkPrefix)
		if written[realKey] {
			continue
		}
		written[realKey] = true
		bw.WriteString(realKey)
		bw.WriteByte(' ')
		bw.WriteString(proxyMapString(x.redirects[key], x.conf.WebBlogLocation, x.conf.WebBlogLocation))
		bw.WriteString(";\n")
	}
	return bw.Flush()
}

// proxyMapString prefixes s unless it already lives below the blog location
// and percent-encodes spaces.
func proxyMapString(s, blogLocation, prefix string) string {
	if !strings.HasPrefix(s, blogLocation) {
		s = prefix + s
	}
	return strings.ReplaceAll(s, " ", "%20")
}
