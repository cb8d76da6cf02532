package shmup

import "fmt"

// Stage is one phase of the frame pass. Systems in a stage run in
// registration order; stages run in the order defaultStages lists.
type Stage struct {
	Name string
}

var (
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	Render     = Stage{Name: "Render"}
)

func defaultStages() []Stage {
	return []Stage{PreUpdate, Update, PostUpdate, Render}
}

type systemScheduleBuilder struct {
	inStage Stage
	system  systemFn
}

func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  system,
		inStage: Update,
	}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  sched.system,
		inStage: s,
	}
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	found := false
	for _, s := range app.stages {
		if s.Name == system.inStage.Name {
			found = true
			break
		}
	}
	if !found {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}

	app.systems[system.inStage.Name] = append(app.systems[system.inStage.Name], system.system)
	return app
}
