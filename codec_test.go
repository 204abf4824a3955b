package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func alexProfile() UserSession {
	return UserSession{
		Name:        "Alex",
		Gender:      Male,
		Preferences: map[string]Score{"bondage": Yes},
		Inventory:   []string{"blindfold"},
		Role:        PartnerA,
	}
}

func TestEncodeLink(t *testing.T) {
	convey.Convey("Given a completed Partner A profile", t, func() {
		profile := alexProfile()

		convey.Convey("When it is encoded onto a base url", func() {
			link, err := EncodeLink("https://example.com/play/", profile)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the link carries a #sync= fragment on the base", func() {
				convey.So(link, convey.ShouldStartWith, "https://example.com/play/#sync=")
			})

			convey.Convey("Then the payload is base64 json with exactly the profile fields", func() {
				payload := strings.TrimPrefix(link, "https://example.com/play/#sync=")
				data, err := base64.StdEncoding.DecodeString(payload)
				convey.So(err, convey.ShouldBeNil)

				var fields map[string]any
				convey.So(json.Unmarshal(data, &fields), convey.ShouldBeNil)
				convey.So(len(fields), convey.ShouldEqual, 5)
				convey.So(fields["name"], convey.ShouldEqual, "Alex")
				convey.So(fields["gender"], convey.ShouldEqual, "M")
				convey.So(fields["role"], convey.ShouldEqual, "Partner A")
				convey.So(fields["inventory"], convey.ShouldResemble, []any{"blindfold"})
				convey.So(fields["preferences"], convey.ShouldResemble, map[string]any{"bondage": "YES"})
			})
		})

		convey.Convey("When the base url already has a query and fragment", func() {
			link, err := EncodeLink("https://example.com/?lang=ru#old", profile)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then both are dropped", func() {
				convey.So(link, convey.ShouldStartWith, "https://example.com/#sync=")
				convey.So(strings.Count(link, "#"), convey.ShouldEqual, 1)
			})
		})
	})
}

func TestDecodeLinkRoundTrip(t *testing.T) {
	convey.Convey("Given a variety of valid profiles", t, func() {
		profiles := []UserSession{
			alexProfile(),
			{Name: "Sam", Gender: Female, Preferences: map[string]Score{}, Inventory: []string{}, Role: PartnerA},
			{Name: "Кира", Gender: NonBinary, Preferences: map[string]Score{"massage": Maybe, "roleplay": No}, Inventory: []string{"candles", "wine", "ice"}, Role: PartnerA},
		}

		convey.Convey("Then decode(encode(p)) returns p", func() {
			for _, p := range profiles {
				link, err := EncodeLink("http://localhost:8080/", p)
				convey.So(err, convey.ShouldBeNil)

				got, err := DecodeLink(link)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, p)
			}
		})

		convey.Convey("Then a bare fragment decodes as well as a full url", func() {
			link, _ := EncodeLink("http://localhost:8080/", alexProfile())
			fragment := link[strings.Index(link, "#"):]

			got, err := DecodeLink(fragment)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Name, convey.ShouldEqual, "Alex")
		})

		convey.Convey("Then a percent-encoded payload is accepted", func() {
			payload, _ := EncodeProfile(alexProfile())

			got, err := DecodeLink("#sync=" + url.QueryEscape(payload))
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldResemble, alexProfile())
		})
	})
}

func TestDecodeLinkInventory(t *testing.T) {
	convey.Convey("Given a payload whose inventory repeats and invents items", t, func() {
		payload := base64.StdEncoding.EncodeToString([]byte(
			`{"name":"Alex","gender":"M","inventory":["wine","blindfold","wine","jetpack","blindfold"],"role":"Partner A"}`))

		got, err := DecodeLink("#sync=" + payload)

		convey.Convey("Then the inventory is a set of known items in first-seen order", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Inventory, convey.ShouldResemble, []string{"wine", "blindfold"})
		})
	})
}

func TestDecodeLinkFailures(t *testing.T) {
	convey.Convey("Given links that do not carry a usable payload", t, func() {
		convey.Convey("When the marker is missing", func() {
			_, err := DecodeLink("https://example.com/#other=abc")

			convey.Convey("Then ErrNoSyncPayload is returned", func() {
				convey.So(errors.Is(err, ErrNoSyncPayload), convey.ShouldBeTrue)
			})
		})

		cases := map[string]string{
			"invalid base64":   "#sync=not-valid-base64!!!",
			"empty payload":    "#sync=",
			"not json":         "#sync=" + base64.StdEncoding.EncodeToString([]byte("hello")),
			"json null":        "#sync=" + base64.StdEncoding.EncodeToString([]byte("null")),
			"json array":       "#sync=" + base64.StdEncoding.EncodeToString([]byte(`["Alex"]`)),
			"unknown gender":   "#sync=" + base64.StdEncoding.EncodeToString([]byte(`{"name":"Alex","gender":"X"}`)),
			"unknown score":    "#sync=" + base64.StdEncoding.EncodeToString([]byte(`{"name":"Alex","preferences":{"massage":"SURE"}}`)),
			"bad percent code": "#sync=%zz",
		}

		for name, link := range cases {
			convey.Convey("When the payload is "+name, func() {
				var err error
				convey.So(func() { _, err = DecodeLink(link) }, convey.ShouldNotPanic)

				convey.Convey("Then ErrMalformedPayload is returned", func() {
					convey.So(errors.Is(err, ErrMalformedPayload), convey.ShouldBeTrue)
				})
			})
		}
	})
}
