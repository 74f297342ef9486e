package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type netrcEntry struct {
	machine  string // empty for the default entry
	login    string
	password string
}

var errNetrcNotFound = errors.New("credentials: machine not found in netrc")

// netrcLookup finds the login/password for machine in a netrc file. An exact
// machine entry wins over a default entry. Only the machine, default, login
// and password tokens are interpreted; everything else is skipped.
func netrcLookup(path, machine string) (netrcEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return netrcEntry{}, fmt.Errorf("read netrc: %w", err)
	}

	var entries []*netrcEntry
	var current *netrcEntry

	tokens := strings.Fields(string(data))
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "machine":
			i++
			if i < len(tokens) {
				current = &netrcEntry{machine: tokens[i]}
				entries = append(entries, current)
			}
		case "default":
			current = &netrcEntry{}
			entries = append(entries, current)
		case "login":
			i++
			if current != nil && i < len(tokens) {
				current.login = tokens[i]
			}
		case "password":
			i++
			if current != nil && i < len(tokens) {
				current.password = tokens[i]
			}
		}
	}

	var fallback *netrcEntry
	for _, e := range entries {
		if e.login == "" || e.password == "" {
			continue
		}
		if e.machine == machine {
			return *e, nil
		}
		if e.machine == "" && fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return *fallback, nil
	}
	return netrcEntry{}, errNetrcNotFound
}
