package layouts

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// Fallback is rendered when the homepage template fails, so the page
// still shows the name and slogan without any assets.
func Fallback(appName, appSlogan string) Node {
	return HTML5(HTML5Props{
		Title:    appName,
		Language: "en",
		Body: []Node{
			Main(Class("hero"),
				H1(Text(appName)),
				P(Class("slogan"), Text(appSlogan)),
			),
		},
	})
}
