package tui

import "github.com/amonks/rulefind/internal/help"

var helpMenu = help.Menu{
	{
		Title: "Search",
		Keys: []help.Key{
			{Keys: "enter", Desc: "find next (replace, in the replace box)"},
			{Keys: "ctrl+n", Desc: "find next"},
			{Keys: "ctrl+r", Desc: "replace"},
			{Keys: "ctrl+f", Desc: "find all"},
			{Keys: "ctrl+a", Desc: "replace all"},
			{Keys: "esc", Desc: "cancel search"},
			{Keys: "ctrl+z", Desc: "undo last replace"},
			{Keys: "ctrl+s", Desc: "save project"},
			{Keys: "tab", Desc: "next pane"},
		},
	},
	{
		Title: "Options",
		Keys: []help.Key{
			{Keys: "alt+c", Desc: "toggle match case"},
			{Keys: "alt+r", Desc: "toggle regular expressions"},
			{Keys: "alt+s", Desc: "change scope"},
		},
	},
	{
		Title: "Results",
		Keys: []help.Key{
			{Keys: "↑ or k", Desc: "previous result"},
			{Keys: "↓ or j", Desc: "next result"},
			{Keys: "gg or G", Desc: "first or last result"},
			{Keys: "enter or l", Desc: "go to result"},
			{Keys: "?", Desc: "show help"},
			{Keys: "q", Desc: "quit"},
		},
	},
	{
		Title: "Help",
		Keys: []help.Key{
			{Keys: "esc or q", Desc: "exit help"},
			{Keys: "ctrl+c", Desc: "quit"},
		},
	},
}
