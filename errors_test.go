package main

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestErrorPagePrefix(t *testing.T) {
	convey.Convey("Given the app is served under a prefix", t, func() {
		page := newPage("/game", "Server Error", "An error has occurred.")

		convey.Convey("Then the error page links stay under it", func() {
			convey.So(page, convey.ShouldContainSubstring, `<a href="/game/">`)
			convey.So(page, convey.ShouldContainSubstring, `href="/game/favicons/favicon.svg"`)
			convey.So(page, convey.ShouldContainSubstring, `href="/game/favicons/site.webmanifest"`)
		})
	})

	convey.Convey("Given the app is served at the root", t, func() {
		page := newPage("", "Server Error", "An error has occurred.")

		convey.So(page, convey.ShouldContainSubstring, `<a href="/">`)
		convey.So(page, convey.ShouldContainSubstring, `href="/favicons/favicon.svg"`)
	})
}
