package offline

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"text/template"
)

//go:embed service-worker.js.tmpl
var workerSource string

var workerTmpl = template.Must(template.New("sw").Parse(workerSource))

// Script renders the service worker for p.
func Script(p Policy) ([]byte, error) {
	name, err := json.Marshal(p.CacheName())
	if err != nil {
		return nil, err
	}
	precache := p.Precache
	if precache == nil {
		precache = []string{}
	}
	list, err := json.Marshal(precache)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = workerTmpl.Execute(&buf, map[string]string{
		"CacheName":     p.CacheName(),
		"CacheNameJSON": string(name),
		"PrecacheJSON":  string(list),
	})
	return buf.Bytes(), err
}

// Manifest is the web app manifest.
type Manifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	StartURL        string `json:"start_url"`
	Scope           string `json:"scope"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
	Lang            string `json:"lang"`
}

// DefaultManifest describes the installed raffle app.
func DefaultManifest() Manifest {
	return Manifest{
		Name:            "Rifas",
		ShortName:       "Rifas",
		StartURL:        "/rifas",
		Scope:           "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#7f1d1d",
		Lang:            "es-CR",
	}
}
