// Package config loads the optional YAML defaults file for the CLI. Values
// from the file form the base configuration; command-line flags and batch
// lines layer on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigValue    = errors.New("invalid config value")
)

// File mirrors the YAML defaults file layout.
type File struct {
	Page    PageSection    `yaml:"page"`
	Render  RenderSection  `yaml:"render"`
	Network NetworkSection `yaml:"network"`
	Inject  InjectSection  `yaml:"inject"`
	TOC     TOCSection     `yaml:"toc"`
	Title   *string        `yaml:"title"`
}

// PageSection defines page geometry defaults. Lengths are unit strings
// ("10mm", "0.5in", ...).
type PageSection struct {
	Size         *string `yaml:"size"`
	Orientation  *string `yaml:"orientation"`
	Width        *string `yaml:"width"`
	Height       *string `yaml:"height"`
	MarginTop    *string `yaml:"marginTop"`
	MarginBottom *string `yaml:"marginBottom"`
	MarginLeft   *string `yaml:"marginLeft"`
	MarginRight  *string `yaml:"marginRight"`
}

// RenderSection defines rendering behavior defaults.
type RenderSection struct {
	Background        *bool    `yaml:"background"`
	JavaScript        *bool    `yaml:"javascript"`
	JavaScriptDelayMS *int     `yaml:"javascriptDelayMs"`
	Zoom              *float64 `yaml:"zoom"`
	PrintMediaType    *bool    `yaml:"printMediaType"`
	ViewportSize      *string  `yaml:"viewportSize"`
	WindowStatus      *string  `yaml:"windowStatus"`
	Encoding          *string  `yaml:"encoding"`
	Grayscale         *bool    `yaml:"grayscale"`
}

// NetworkSection defines network defaults.
type NetworkSection struct {
	Proxy   *string    `yaml:"proxy"`
	Headers []KeyValue `yaml:"headers"`
	Cookies []KeyValue `yaml:"cookies"`
}

// KeyValue is one named value in a header or cookie list.
type KeyValue struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// InjectSection defines content-injection defaults.
type InjectSection struct {
	UserStylesheet *string  `yaml:"userStylesheet"`
	RunScripts     []string `yaml:"runScripts"`
}

// TOCSection defines table-of-contents defaults.
type TOCSection struct {
	Enabled    *bool   `yaml:"enabled"`
	Stylesheet *string `yaml:"stylesheet"`
}

// Load reads and parses the defaults file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	var f File
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &f, nil
}

// Overrides converts the file into an overlay for the library defaults.
// Unit strings are parsed here so a bad value fails before any rendering.
func (f *File) Overrides() (html2pdf.Overrides, error) {
	var o html2pdf.Overrides

	o.PageSize = f.Page.Size
	o.Orientation = f.Page.Orientation
	o.Title = f.Title

	var err error
	if o.PageWidth, err = inches(f.Page.Width, "page.width"); err != nil {
		return o, err
	}
	if o.PageHeight, err = inches(f.Page.Height, "page.height"); err != nil {
		return o, err
	}
	if o.MarginTop, err = inches(f.Page.MarginTop, "page.marginTop"); err != nil {
		return o, err
	}
	if o.MarginBottom, err = inches(f.Page.MarginBottom, "page.marginBottom"); err != nil {
		return o, err
	}
	if o.MarginLeft, err = inches(f.Page.MarginLeft, "page.marginLeft"); err != nil {
		return o, err
	}
	if o.MarginRight, err = inches(f.Page.MarginRight, "page.marginRight"); err != nil {
		return o, err
	}

	o.Background = f.Render.Background
	o.JavaScript = f.Render.JavaScript
	if f.Render.JavaScriptDelayMS != nil {
		d := time.Duration(*f.Render.JavaScriptDelayMS) * time.Millisecond
		o.JavaScriptDelay = &d
	}
	o.Zoom = f.Render.Zoom
	o.PrintMediaType = f.Render.PrintMediaType
	if f.Render.ViewportSize != nil {
		vp, err := html2pdf.ParseViewportSize(*f.Render.ViewportSize)
		if err != nil {
			return o, fmt.Errorf("%w: render.viewportSize: %v", ErrConfigValue, err)
		}
		o.Viewport = &vp
	}
	o.WindowStatus = f.Render.WindowStatus
	o.Encoding = f.Render.Encoding
	o.Grayscale = f.Render.Grayscale

	o.Proxy = f.Network.Proxy
	for _, h := range f.Network.Headers {
		o.Headers = append(o.Headers, html2pdf.Header{Name: h.Name, Value: h.Value})
	}
	for _, c := range f.Network.Cookies {
		o.Cookies = append(o.Cookies, html2pdf.Cookie{Name: c.Name, Value: c.Value})
	}

	o.UserStylesheet = f.Inject.UserStylesheet
	o.RunScripts = append(o.RunScripts, f.Inject.RunScripts...)

	o.TOC = f.TOC.Enabled
	o.TOCStylesheet = f.TOC.Stylesheet

	return o, nil
}

// inches parses an optional unit string into an inch value.
func inches(s *string, field string) (*float64, error) {
	if s == nil {
		return nil, nil
	}
	v, err := html2pdf.UnitToInches(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigValue, field, err)
	}
	return &v, nil
}
