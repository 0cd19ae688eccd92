// Package globe is an interactive, sun-lit 3D Earth for [Ebitengine].
//
// A [Globe] renders a textured sphere lit by a sun that tracks the season,
// a procedural starfield, and glowing markers pinned to latitude and
// longitude. Users turn it with a drag, zoom with a pinch or the mouse
// wheel, and tap markers.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, err := globe.LoadRunConfig() // defaults plus GLOBE_* variables
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := globe.Run(nil, cfg); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Globe.Update] and [Globe.Draw] directly:
//
//	type Game struct{ globe *globe.Globe }
//
//	func (g *Game) Update() error               { return g.globe.Update() }
//	func (g *Game) Draw(s *ebiten.Image)        { g.globe.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Scene graph
//
// The globe is a small tree of [Node] values. User spin and tilt sit above
// the seasonal tilt, which sits above the earth itself, so gestures turn
// the planet together with its markers and the sun. The starfield hangs off
// the root and stays put while the camera sits at a fixed distance.
//
// # Gestures
//
// [Globe] implements [GestureHandler]. The built-in recognizer reads mouse,
// touch, wheel and arrow keys; hosts with their own gesture source can
// disable it with Config.DisableInput and feed the handler through
// [PointerAdapter], [MagnificationAdapter] or [DPadAdapter]. Recognised
// gestures are forwarded to an [EventSink], and the globe/ecs module
// publishes them as [Donburi] events.
//
// # Markers
//
//	m := globe.NewGlowingMarker(48.86, 2.35)
//	m.Pulse = true
//	m.OnClick = func(ctx globe.ClickContext) { log.Println("Paris") }
//	g.AddMarker(m)
//
// Marker size, colour and alpha can be animated with tweens (via [gween]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package globe
