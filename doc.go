// Package kaboom is a small 2D game runtime for [Ebitengine] built around
// composable game objects.
//
// # Quick start
//
// Register scenes on an [Engine] and hand it to [Run], which opens a window
// and drives the frame loop:
//
//	e := kaboom.New(kaboom.Config{})
//	e.Scene("main", func(s *kaboom.Scene, _ ...any) {
//		player := s.Add(
//			kaboom.NewRectShape(16, 16),
//			kaboom.Pos(80, 40),
//			kaboom.NewArea(kaboom.Vec2{}, kaboom.Vec2{X: 16, Y: 16}),
//			kaboom.NewBody(),
//			"player",
//		)
//		s.KeyPress("space", func() { player.Body().Jump() })
//	})
//	if err := kaboom.Run(e, "main"); err != nil {
//		log.Fatal(err)
//	}
//
// For tests and headless tools, skip Run and call [Engine.Step] or
// [Engine.Frame] directly with a [ScriptedInput] and your own [Backend].
//
// # Game objects
//
// A [GameObject] is built from components passed to [Scene.Add]. Strings
// become tags. Built-in components ([Pos], [Scale], [Rotate], [Colored],
// [Origin], [Layer], [Z], [Solid], [NewArea], [NewBody], [NewSprite],
// [NewText], [NewRectShape], [NewTimer], [UseShader]) keep their state in
// typed slots on the object. Any other [Component] is kept in attach order
// and found again with [CompOf]; its Add, Update, Draw and Destroy methods
// become hooks.
//
// # Scenes and events
//
// Scene listeners select objects by tag: [Scene.Action], [Scene.Render],
// [Scene.Collides], [Scene.Overlaps], [Scene.Clicks] and [Scene.On]. Input
// listeners ([Scene.KeyPress], [Scene.MouseClick] and friends) run even
// while the engine is paused. Timers ([Scene.Wait], [Scene.Loop]) fire in
// creation order. Every registration returns a [Handle] whose Remove
// cancels it.
//
// Object events can be mirrored elsewhere with [Engine.SetEventStore]. The
// kaboom/ecs module publishes them into a [Donburi] world.
//
// # Rendering
//
// Drawing goes through a [Renderer] that batches textured triangles and
// flushes them to a [Backend] only when the texture or shader changes or
// the batch is full. The default backend draws with ebiten's
// DrawTriangles32.
//
// # Assets
//
// [Assets] loads sprites, Aseprite sheets, bitmap fonts, sounds and Kage
// shaders in the background. The engine shows a loading bar until every
// loader finishes. With Assets.Watch set in the config, sprite files are
// reloaded when they change on disk.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package kaboom
