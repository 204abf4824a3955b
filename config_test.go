package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func validConfig() *Config {
	return &Config{
		bind:           "0.0.0.0",
		lang:           "en",
		port:           8080,
		sessionTimeout: time.Hour,
	}
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := validConfig()

		convey.Convey("Then it validates and resolves the language", func() {
			convey.So(cfg.validate(), convey.ShouldBeNil)
			convey.So(cfg.language, convey.ShouldEqual, language.English)
			convey.So(cfg.baseURL, convey.ShouldBeNil)
			convey.So(cfg.scheme(), convey.ShouldEqual, "http")
		})

		convey.Convey("When a base url is set", func() {
			cfg.baseURLRaw = "https://play.example.com/game/"

			convey.So(cfg.validate(), convey.ShouldBeNil)
			convey.So(cfg.baseURL.String(), convey.ShouldEqual, "https://play.example.com/game/")
		})

		invalid := map[string]func(c *Config){
			"a relative base url":    func(c *Config) { c.baseURLRaw = "/game/" },
			"a port of zero":         func(c *Config) { c.port = 0 },
			"a port above 65535":     func(c *Config) { c.port = 70000 },
			"a negative timeout":     func(c *Config) { c.sessionTimeout = -time.Second },
			"a lone tls certificate": func(c *Config) { c.tlsCert = "cert.pem" },
			"an unknown language":    func(c *Config) { c.lang = "not a language" },
		}

		for name, mutate := range invalid {
			convey.Convey("When the config has "+name, func() {
				mutate(cfg)

				convey.Convey("Then validation fails", func() {
					convey.So(cfg.validate(), convey.ShouldNotBeNil)
				})
			})
		}

		convey.Convey("When a Russian default is asked for", func() {
			cfg.lang = "ru"

			convey.So(cfg.validate(), convey.ShouldBeNil)
			convey.So(cfg.language, convey.ShouldEqual, language.Russian)
		})
	})
}

func TestDecodeCommand(t *testing.T) {
	convey.Convey("Given a share link", t, func() {
		link, err := EncodeLink("https://example.com/", alexProfile())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the decode subcommand runs on it", func() {
			var out bytes.Buffer
			cmd := newCmd(validConfig())
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"decode", link})

			convey.So(cmd.Execute(), convey.ShouldBeNil)

			convey.Convey("Then the profile is printed as json", func() {
				var got UserSession
				convey.So(json.Unmarshal(out.Bytes(), &got), convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, alexProfile())
			})
		})

		convey.Convey("When the decode subcommand runs on a corrupted link", func() {
			cmd := newCmd(validConfig())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs([]string{"decode", "https://example.com/#sync=not-valid-base64!!!"})

			err := cmd.Execute()

			convey.Convey("Then it fails with a malformed payload error", func() {
				convey.So(errors.Is(err, ErrMalformedPayload), convey.ShouldBeTrue)
			})
		})
	})
}
