// Package components holds small HTML fragments shared by the admin pages.
package components

// The .templ sources under internal/ are compiled into the committed
// _templ.go files.
//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate -path ../..
