package scaffold_test

import (
	"testing"

	"etch/internal/scaffold"
)

func TestNewDataCaseForms(t *testing.T) {
	cases := []struct {
		name   string
		pascal string
		camel  string
		kebab  string
		snake  string
	}{
		{"user-profile", "UserProfile", "userProfile", "user-profile", "user_profile"},
		{"UserProfile", "UserProfile", "userProfile", "user-profile", "user_profile"},
		{"userProfile", "UserProfile", "userProfile", "user-profile", "user_profile"},
		{"user_profile", "UserProfile", "userProfile", "user-profile", "user_profile"},
		{"My App", "MyApp", "myApp", "my-app", "my_app"},
		{"HTTPServer", "HTTPServer", "httpServer", "http-server", "http_server"},
		{"login", "Login", "login", "login", "login"},
		{"Screen2", "Screen2", "screen2", "screen2", "screen2"},
	}
	for _, tc := range cases {
		d := scaffold.NewData(tc.name, "", "")
		if d.Name != tc.name {
			t.Errorf("NewData(%q).Name = %q", tc.name, d.Name)
		}
		if d.Pascal != tc.pascal {
			t.Errorf("NewData(%q).Pascal = %q, want %q", tc.name, d.Pascal, tc.pascal)
		}
		if d.Camel != tc.camel {
			t.Errorf("NewData(%q).Camel = %q, want %q", tc.name, d.Camel, tc.camel)
		}
		if d.Kebab != tc.kebab {
			t.Errorf("NewData(%q).Kebab = %q, want %q", tc.name, d.Kebab, tc.kebab)
		}
		if d.Snake != tc.snake {
			t.Errorf("NewData(%q).Snake = %q, want %q", tc.name, d.Snake, tc.snake)
		}
	}
}

func TestNewDataPassthrough(t *testing.T) {
	d := scaffold.NewData("demo", "org.acme.demo", "pnpm")
	if d.Bundle != "org.acme.demo" {
		t.Errorf("Bundle = %q", d.Bundle)
	}
	if d.Packager != "pnpm" {
		t.Errorf("Packager = %q", d.Packager)
	}
}
