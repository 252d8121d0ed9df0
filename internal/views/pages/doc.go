// Package pages renders the content area of each admin page.
package pages
