package layer

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type InputSchemaSuite struct {
	suite.Suite
}

func TestInputSchemaSuite(t *testing.T) {
	suite.Run(t, new(InputSchemaSuite))
}

func (s *InputSchemaSuite) TestRequiredAddsEachName() {
	d := Define("Test", Required("foo", "bar"))

	s.Equal([]string{"foo", "bar"}, d.Schema().RequiredInputs())
	s.Empty(d.Schema().OptionalInputs())
}

func (s *InputSchemaSuite) TestOptionalAddsEachName() {
	d := Define("Test", Optional("foo", "bar"))

	s.Equal([]string{"foo", "bar"}, d.Schema().OptionalInputs())
	s.Empty(d.Schema().RequiredInputs())
}

func (s *InputSchemaSuite) TestRedeclarationCollapses() {
	d := Define("Test",
		Required("foo"),
		Required("foo", "bar"),
		Optional("baz"),
		Optional("baz"),
	)

	s.Equal([]string{"foo", "bar"}, d.Schema().RequiredInputs())
	s.Equal([]string{"baz"}, d.Schema().OptionalInputs())
}

func (s *InputSchemaSuite) TestOptionalWithDefault() {
	d := Define("Test", OptionalWithDefault(map[string]any{"foo": []string{}, "bar": map[string]any{}}))

	s.Equal([]string{"bar", "foo"}, d.Schema().OptionalInputs())
	s.Equal(map[string]any{"foo": []string{}, "bar": map[string]any{}}, d.Schema().DefaultInputs())
}

func (s *InputSchemaSuite) TestOptionalWithDefaultKeepsExistingOptional() {
	d := Define("Test",
		Optional("qux", "baz"),
		OptionalWithDefault(map[string]any{"qux": "quux"}),
	)

	s.Equal([]string{"qux", "baz"}, d.Schema().OptionalInputs())
	s.Equal(map[string]any{"qux": "quux"}, d.Schema().DefaultInputs())
}

func (s *InputSchemaSuite) TestDefaultInputsIsACopy() {
	d := Define("Test", OptionalWithDefault(map[string]any{"foo": 1}))

	defaults := d.Schema().DefaultInputs()
	defaults["foo"] = 2
	defaults["bar"] = 3

	s.Equal(map[string]any{"foo": 1}, d.Schema().DefaultInputs())
}

func (s *InputSchemaSuite) TestAllInputs() {
	d := Define("Test", Required("foo", "bar"), Optional("baz", "qux", "foo"))

	s.Equal([]string{"foo", "bar", "baz", "qux"}, d.Schema().AllInputs())
}

func (s *InputSchemaSuite) TestSpec() {
	d := Define("Test",
		Required("foo"),
		Optional("bar"),
		OptionalWithDefault(map[string]any{"baz": 5}),
	)

	foo, ok := d.Schema().Spec("foo")
	s.Require().True(ok)
	s.Equal(InputSpec{Name: "foo", Required: true}, foo)

	baz, ok := d.Schema().Spec("baz")
	s.Require().True(ok)
	s.Equal(InputSpec{Name: "baz", HasDefault: true, Default: 5}, baz)

	_, ok = d.Schema().Spec("missing")
	s.False(ok)

	s.Len(d.Schema().Specs(), 3)
}
