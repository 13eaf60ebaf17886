// Package golearn converts cleaned frames into
// github.com/sjwhitworth/golearn/base DenseInstances for model training.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric
// columns become float attributes with NaN for missing cells; text columns
// become categorical attributes with missing cells mapped to "". When
// classColumn is set it is registered as the class attribute.
func ToDenseInstances(f *j.Frame, classColumn string) (*base.DenseInstances, error) {
	cols := f.Columns()
	attrs := make([]base.Attribute, len(cols))
	class := -1
	for i, c := range cols {
		switch c.Kind() {
		case j.KindFloat, j.KindInt:
			attrs[i] = base.NewFloatAttribute(c.Name())
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(c.Name())
			attrs[i] = ca
		}
		if c.Name() == classColumn {
			class = i
		}
	}
	if classColumn != "" && class < 0 {
		return nil, fmt.Errorf("class column %q not found", classColumn)
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if class >= 0 {
		if err := inst.AddClassAttribute(attrs[class]); err != nil {
			return nil, err
		}
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for c, col := range cols {
		fc := j.ToFloat(col)
		for r := 0; r < f.Rows(); r++ {
			if fc != nil {
				v, ok := fc.Get(r)
				if !ok {
					v = math.NaN()
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
				continue
			}
			s, _ := col.Text(r)
			inst.Set(specs[c], r, attrs[c].GetSysValFromString(s))
		}
	}
	return inst, nil
}
