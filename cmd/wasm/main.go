//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/wlmath-dwl/neuron/internal/config"
	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/paint"
	"github.com/wlmath-dwl/neuron/internal/shapes"
	"github.com/wlmath-dwl/neuron/internal/view"
)

var (
	eng       *engine.Engine
	recorder  *paint.Recorder
	listeners = map[string]js.Value{}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		js.Global().Get("console").Call("error", "neuron: "+err.Error())
		return
	}

	tr := view.NewTransform()
	recorder = paint.NewRecorder(tr)
	eng = engine.New(append(cfg.EngineOptions(),
		engine.WithRegistry(shapes.NewRegistry()),
		engine.WithTransform(tr),
		engine.WithPainter(paint.NewPainter(tr, recorder)),
	)...)
	eng.On(engine.EventReady, func(...any) { shapes.Seed(eng.Body()) })
	eng.On(engine.EventCmd, func(args ...any) {
		d := args[0].(engine.Depth)
		notify(engine.EventCmd, map[string]interface{}{"undo": d.Undo, "redo": d.Redo})
	})
	eng.On(engine.EventSelect, func(args ...any) {
		id := ""
		if c, ok := args[0].(*model.Cell); ok && c != nil {
			id = c.ID
		}
		notify(engine.EventSelect, id)
	})

	neuronEngine := js.Global().Get("Object").New()

	// --- Input (frontend → engine) ---
	neuronEngine.Set("resize", js.FuncOf(resize))
	neuronEngine.Set("dragStart", js.FuncOf(pointer(eng.DragStart)))
	neuronEngine.Set("drag", js.FuncOf(pointer(eng.Drag)))
	neuronEngine.Set("dragEnd", js.FuncOf(pointer(eng.DragEnd)))
	neuronEngine.Set("zoom", js.FuncOf(zoom))
	neuronEngine.Set("undo", js.FuncOf(undo))
	neuronEngine.Set("redo", js.FuncOf(redo))
	neuronEngine.Set("changeFsm", js.FuncOf(changeFsm))
	neuronEngine.Set("on", js.FuncOf(on))

	// --- Queries (frontend ← engine) ---
	neuronEngine.Set("render", js.FuncOf(render))
	neuronEngine.Set("cells", js.FuncOf(cells))
	neuronEngine.Set("depth", js.FuncOf(depth))

	js.Global().Set("neuronEngine", neuronEngine)
	js.Global().Set("neuronWasmReady", js.ValueOf(true))

	select {}
}

func notify(name string, v interface{}) {
	if fn, ok := listeners[name]; ok {
		fn.Invoke(js.ValueOf(v))
	}
}

// points reads flat x0, y0, x1, y1 ... screen coordinates.
func points(args []js.Value) []geom.Vec {
	out := make([]geom.Vec, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		out = append(out, geom.V(args[i].Float(), args[i+1].Float()))
	}
	return out
}

func pointer(fn func([]geom.Vec)) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		fn(points(args))
		return nil
	}
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errResult("resize requires width and height")
	}
	eng.Resize(args[0].Float(), args[1].Float())
	return nil
}

func zoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errResult("zoom requires x, y and out")
	}
	eng.Zoom(points(args[:2]), args[2].Truthy())
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	eng.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) interface{} {
	eng.Redo()
	return nil
}

func changeFsm(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("changeFsm requires a name")
	}
	var param any
	if len(args) > 1 && args[1].Type() == js.TypeString {
		param = engine.PlaceParam{CellName: args[1].String()}
	}
	if err := eng.ChangeFsm(args[0].String(), param); err != nil {
		return errResult(err.Error())
	}
	return nil
}

func on(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return errResult("on requires an event name and a function")
	}
	listeners[args[0].String()] = args[1]
	return nil
}

func render(this js.Value, args []js.Value) interface{} {
	eng.Render()
	data, err := recorder.JSON()
	if err != nil {
		return errResult(err.Error())
	}
	return string(data)
}

func cells(this js.Value, args []js.Value) interface{} {
	out := make([]interface{}, 0)
	for _, s := range eng.Cells() {
		out = append(out, map[string]interface{}{
			"id":    s.ID,
			"name":  s.Name,
			"layer": s.Layer,
		})
	}
	return out
}

func depth(this js.Value, args []js.Value) interface{} {
	d := eng.Depth()
	return map[string]interface{}{"undo": d.Undo, "redo": d.Redo}
}

func errResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}
