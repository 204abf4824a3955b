package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func TestResolveLanguage(t *testing.T) {
	convey.Convey("Given requests asking for a language in different ways", t, func() {
		convey.Convey("When nothing is asked for", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tag, persist := resolveLanguage(r, language.English)

			convey.Convey("Then the fallback is used", func() {
				convey.So(tag, convey.ShouldEqual, language.English)
				convey.So(persist, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When Accept-Language prefers Russian", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")
			tag, _ := resolveLanguage(r, language.English)

			convey.So(tag, convey.ShouldEqual, language.Russian)
		})

		convey.Convey("When the cookie disagrees with Accept-Language", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept-Language", "ru")
			r.AddCookie(&http.Cookie{Name: langCookieName, Value: "en"})
			tag, _ := resolveLanguage(r, language.Russian)

			convey.Convey("Then the cookie wins", func() {
				convey.So(tag, convey.ShouldEqual, language.English)
			})
		})

		convey.Convey("When the query param is set", func() {
			r := httptest.NewRequest(http.MethodGet, "/?lang=ru", nil)
			r.AddCookie(&http.Cookie{Name: langCookieName, Value: "en"})
			tag, persist := resolveLanguage(r, language.English)

			convey.Convey("Then it wins and should be persisted", func() {
				convey.So(tag, convey.ShouldEqual, language.Russian)
				convey.So(persist, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the query param is unsupported", func() {
			r := httptest.NewRequest(http.MethodGet, "/?lang=bad!", nil)
			tag, persist := resolveLanguage(r, language.English)

			convey.So(tag, convey.ShouldEqual, language.English)
			convey.So(persist, convey.ShouldBeFalse)
		})
	})
}

func TestPrinters(t *testing.T) {
	convey.Convey("Given printers for both languages", t, func() {
		en := printerFor(language.English)
		ru := printerFor(language.Russian)

		convey.Convey("Then English keys print as themselves", func() {
			convey.So(en.Sprintf("Start the game"), convey.ShouldEqual, "Start the game")
			convey.So(en.Sprintf(string(NoticeLinkRequired)), convey.ShouldEqual, string(NoticeLinkRequired))
		})

		convey.Convey("Then Russian keys are translated", func() {
			convey.So(ru.Sprintf("Start the game"), convey.ShouldEqual, "Начать игру")
			convey.So(ru.Sprintf("Spark"), convey.ShouldEqual, "Искра")
			convey.So(ru.Sprintf(string(PartnerA)), convey.ShouldEqual, "Партнер А")
		})

		convey.Convey("Then every catalog label has a Russian translation", func() {
			for _, topic := range Topics() {
				convey.So(ru.Sprintf(topic.Label), convey.ShouldNotEqual, topic.Label)
			}
			for _, item := range Inventory() {
				convey.So(ru.Sprintf(item.Label), convey.ShouldNotEqual, item.Label)
			}
			for _, card := range Deck() {
				convey.So(ru.Sprintf(card.Instruction), convey.ShouldNotEqual, card.Instruction)
			}
		})
	})
}
