package shmup

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module is one installable unit of the engine: it registers resources
// and systems on the app. Install order matters when a module depends
// on another module's resource.
type Module interface {
	Install(app *App)
}

// Lifecycle is the resource systems use to stop the main loop.
type Lifecycle struct {
	Quit bool
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	lifecycle *Lifecycle
}

// Run executes every stage's systems in order, once per frame, until a
// system sets Lifecycle.Quit.
func (app *App) Run() {
	for !app.lifecycle.Quit {
		app.Step()
	}
}

// Step runs a single frame pass over all stages.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
}

// AddResources registers resources by their pointed-to type. Adding
// the same type twice is a wiring mistake and panics.
func (app *App) AddResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the registered resource of pointer type T. Modules
// call it during Install to express install-order dependencies.
func Resource[T any](app *App) T {
	var zero T
	want := reflect.TypeOf(zero)
	if want == nil || want.Kind() != reflect.Ptr {
		panic("Resource type parameter must be a pointer type")
	}
	if r, ok := app.resources[want.Elem()]; ok {
		return r.(T)
	}
	panic(fmt.Sprintf("no %s resource installed", want))
}

// Systems receive their dependencies as pointer arguments resolved
// from the resource registry.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)

		resource, ok := app.resources[argType.Elem()]
		if !ok {
			panic(fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(argType),
			))
		}
		args[i] = reflect.ValueOf(resource)
	}
	systemValue.Call(args)
}
