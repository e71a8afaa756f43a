package vectorstore

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var validNameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.-]*$`)

func TestCollectionName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.example.com/docs/page", "example.com"},
		{"https://example.com", "example.com"},
		{"http://blog.example.org/post?id=7", "blog.example.org"},
		{"http://example.com:8080/api", "example.com-8080"},
		{"http://my_site.example.com", "my-site.example.com"},
		{"http://example.com.", "example.com"},
		{"http://ab", "site-ab"},
		{"", "site-default"},
		{"not a url", "site-default"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CollectionName(tc.url), tc.url)
	}
}

func TestCollectionName_Deterministic(t *testing.T) {
	u := "https://www.example.com/any/path"
	assert.Equal(t, CollectionName(u), CollectionName(u))
}

func TestCollectionName_AlwaysValid(t *testing.T) {
	urls := []string{
		"https://www.example.com",
		"http://127.0.0.1:3000/x",
		"https://héllo.example",
		"ftp://weird_host_name",
		"http://" + strings.Repeat("a", 80) + ".com",
		"",
	}
	for _, u := range urls {
		name := CollectionName(u)
		assert.True(t, validNameRe.MatchString(name), "%q -> %q", u, name)
		assert.LessOrEqual(t, len(name), MaxNameLen, u)
		assert.GreaterOrEqual(t, len(name), 3, u)
	}
}
