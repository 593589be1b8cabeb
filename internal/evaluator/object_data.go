package evaluator

import "github.com/funvibe/mcomp/internal/config"

// DataInstance is a value built by a data constructor such as Some(1) or
// None.
type DataInstance struct {
	Name     string
	Fields   []Object
	TypeName string
}

func (d *DataInstance) Type() ObjectType { return DATA_INSTANCE_OBJ }
func (d *DataInstance) Inspect() string {
	if len(d.Fields) == 0 {
		return d.Name
	}
	return d.Name + "(" + inspectAll(d.Fields) + ")"
}

// Is reports whether d was built by the named constructor.
func (d *DataInstance) Is(ctor string) bool { return d != nil && d.Name == ctor }

func NewSome(v Object) *DataInstance {
	return &DataInstance{Name: config.SomeCtorName, Fields: []Object{v}, TypeName: config.OptionMonadName}
}

func NewNone() *DataInstance {
	return &DataInstance{Name: config.NoneCtorName, TypeName: config.OptionMonadName}
}

func NewOk(v Object) *DataInstance {
	return &DataInstance{Name: config.OkCtorName, Fields: []Object{v}, TypeName: config.ResultMonadName}
}

func NewFail(v Object) *DataInstance {
	return &DataInstance{Name: config.FailCtorName, Fields: []Object{v}, TypeName: config.ResultMonadName}
}
