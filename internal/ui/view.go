package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// State is the lifecycle stage of the greeting view.
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

// View is everything needed to render the greeting.
type View struct {
	State    State
	Username string
	Err      string
}

// Greeting is the headline for a settled view.
func (v View) Greeting() string {
	name := v.Username
	if v.State == StateError || name == "" {
		name = "Guest"
	}
	return "Hello " + name + "!"
}

// greetingContent renders the view body. It is both the page's initial
// content and the /ui/greeting fragment.
func greetingContent(v View) Node {
	if v.State == StateLoading {
		return Div(Class("app"),
			Div(Class("content"),
				H1(Text("Loading...")),
			),
		)
	}

	return Div(Class("app"),
		Div(Class("content"),
			H1(Text(v.Greeting())),
			If(v.State == StateError, P(Class("error"), Text("Error: "+v.Err))),
		),
	)
}

// shellPage is the full document. The script replaces #root with the
// /ui/greeting fragment once on load.
func shellPage(v View) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text("Greeting App")),
				Link(Rel("icon"), Href("data:,")),
				Link(Rel("stylesheet"), Href("/static/app.css")),
				Script(Src("/static/app.js"), Defer()),
			),
			Body(
				Div(ID("root"), Attr("data-greeting-src", "/ui/greeting"),
					greetingContent(v),
				),
			),
		),
	)
}
