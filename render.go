package main

import (
	"embed"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

type genderOption struct {
	Value    Gender
	Label    string
	Selected bool
}

type itemOption struct {
	InventoryItem
	Selected bool
}

type scoreOption struct {
	Value Score
	Label string
}

// pageView is everything the wizard template needs for one render.
type pageView struct {
	p *message.Printer

	Prefix  string
	Lang    string
	Version string
	Step    Step
	State   State
	Notice  string
	Copied  string

	JoiningName string
	Genders     []genderOption

	Topic    Topic
	Answered int
	Total    int
	Scores   []scoreOption

	Items []itemOption

	Room RoomMessage
}

// T translates key for the page language.
func (v pageView) T(key string, args ...any) string {
	return v.p.Sprintf(key, args...)
}

func newPageView(cfg *Config, tag language.Tag, s State, notice Notice, m *Matcher) pageView {
	p := printerFor(tag)

	v := pageView{
		p:       p,
		Prefix:  cfg.prefix,
		Lang:    tag.String(),
		Version: releaseVersion,
		Step:    s.Step,
		State:   s,
		Copied:  p.Sprintf(string(NoticeLinkCopied)),
	}
	if notice != "" {
		v.Notice = p.Sprintf(string(notice))
	}

	switch s.Step {
	case StepSetup:
		if s.Local.Role == PartnerB && s.Room.PartnerA != nil {
			v.JoiningName = s.Room.PartnerA.Name
		}
		for _, g := range []struct {
			value Gender
			label string
		}{{Male, "Male"}, {Female, "Female"}, {NonBinary, "Non-binary"}} {
			v.Genders = append(v.Genders, genderOption{
				Value:    g.value,
				Label:    p.Sprintf(g.label),
				Selected: s.Local.Gender == g.value,
			})
		}
	case StepMatcher:
		if m != nil {
			v.Topic, _ = m.Current()
			v.Topic.Label = p.Sprintf(v.Topic.Label)
			v.Answered, v.Total = m.Progress()
		}
		v.Scores = []scoreOption{
			{Value: Yes, Label: p.Sprintf("Yes")},
			{Value: Maybe, Label: p.Sprintf("Maybe")},
			{Value: No, Label: p.Sprintf("No")},
		}
	case StepInventory:
		for _, item := range Inventory() {
			item.Label = p.Sprintf(item.Label)
			v.Items = append(v.Items, itemOption{
				InventoryItem: item,
				Selected:      s.Local.Has(item.ID),
			})
		}
	case StepGame:
		v.Room = newRoomMessage(p, s.Room)
	}

	return v
}

func renderPage(w io.Writer, v pageView) error {
	return pageTemplate.ExecuteTemplate(w, "index.html", v)
}
