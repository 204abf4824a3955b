package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const syncMarker = "#sync="

var (
	ErrNoSyncPayload    = errors.New("no sync payload in link")
	ErrMalformedPayload = errors.New("malformed sync payload")
)

// syncPayload is the exact shape carried in a share link.
type syncPayload struct {
	Name        string           `json:"name"`
	Gender      Gender           `json:"gender"`
	Preferences map[string]Score `json:"preferences"`
	Inventory   []string         `json:"inventory"`
	Role        Role             `json:"role"`
}

// EncodeProfile serialises a profile into the text-safe payload string.
func EncodeProfile(u UserSession) (string, error) {
	data, err := json.Marshal(syncPayload{
		Name:        u.Name,
		Gender:      u.Gender,
		Preferences: u.Preferences,
		Inventory:   u.Inventory,
		Role:        u.Role,
	})
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeLink appends the profile payload to base as a #sync= fragment.
// Any query or fragment already on base is dropped.
func EncodeLink(base string, u UserSession) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	b.RawQuery = ""
	b.Fragment = ""
	b.RawFragment = ""

	payload, err := EncodeProfile(u)
	if err != nil {
		return "", err
	}

	return b.String() + syncMarker + payload, nil
}

// DecodeLink extracts the profile from a full share link or a bare fragment.
func DecodeLink(link string) (UserSession, error) {
	i := strings.Index(link, syncMarker)
	if i < 0 {
		return UserSession{}, ErrNoSyncPayload
	}

	return DecodeProfile(link[i+len(syncMarker):])
}

func DecodeProfile(payload string) (UserSession, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return UserSession{}, fmt.Errorf("%w: empty", ErrMalformedPayload)
	}

	if strings.Contains(payload, "%") {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return UserSession{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		payload = unescaped
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return UserSession{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return UserSession{}, fmt.Errorf("%w: not a json object", ErrMalformedPayload)
	}

	var p syncPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return UserSession{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return UserSession{
		Name:        p.Name,
		Gender:      p.Gender,
		Preferences: p.Preferences,
		Inventory:   knownItems(p.Inventory),
		Role:        p.Role,
	}, nil
}

// knownItems keeps the first occurrence of each catalog item, in order.
// Unknown ids are dropped.
func knownItems(ids []string) []string {
	if ids == nil {
		return nil
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := lookupItem(id); !ok || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}

	return out
}
