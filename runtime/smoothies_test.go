package runtime_test

import (
	"sync"

	"github.com/Yamashou/gqlir/codegen"
	"github.com/Yamashou/gqlir/runtime"
	"github.com/Yamashou/gqlir/schema"
	"github.com/Yamashou/gqlir/schemaparser"
)

// The types below are written the way generated code for
// testdata/schema/smoothies looks; their metadata comes from the collector.

var smoothiesIR = sync.OnceValue(func() *codegen.Result {
	doc, err := schemaparser.LoadFile("../testdata/schema/smoothies/schema.graphql")
	if err != nil {
		panic(err)
	}
	r, err := codegen.NewCollector(nil).Collect(schema.Build(doc))
	if err != nil {
		panic(err)
	}
	return r
})

func metaOf(name string) *runtime.TypeMeta {
	return smoothiesIR().Type(name).Meta()
}

type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

type IngredientKind string

const (
	IngredientKindFruit   IngredientKind = "FRUIT"
	IngredientKindProtein IngredientKind = "PROTEIN"
)

type Ingredient struct {
	Name            string         `json:"name"`
	Kind            IngredientKind `json:"kind"`
	CaloriesPerGram float64        `json:"caloriesPerGram"`
}

type IngredientAmount struct {
	Ingredient *Ingredient `json:"ingredient"`
	Grams      float64     `json:"grams"`
	Unit       string      `json:"unit"`
	Calories   float64     `json:"calories"`
}

func (*IngredientAmount) TypeMeta() *runtime.TypeMeta { return metaOf("IngredientAmount") }

func (a *IngredientAmount) Compute(reg *runtime.Registry, field string) (any, error) {
	return runtime.Compute(reg, a, field)
}

type Smoothie struct {
	Name       string              `json:"name"`
	Size       Size                `json:"size"`
	Parts      []*IngredientAmount `json:"parts"`
	FruitNames []string            `json:"fruitNames"`
}

func (*Smoothie) TypeMeta() *runtime.TypeMeta { return metaOf("Smoothie") }

func (s *Smoothie) Compute(reg *runtime.Registry, field string) (any, error) {
	return runtime.Compute(reg, s, field)
}

type BananaStrawberrySmoothie struct {
	Size   Size      `json:"size"`
	Result *Smoothie `json:"result"`
}

func (*BananaStrawberrySmoothie) TypeMeta() *runtime.TypeMeta {
	return metaOf("BananaStrawberrySmoothie")
}

func (b *BananaStrawberrySmoothie) Expand(reg *runtime.Registry, dst any) error {
	return runtime.Expand(reg, b, dst)
}

type SmoothieOrder struct {
	Customer string    `json:"customer"`
	Size     Size      `json:"size"`
	Smoothie *Smoothie `json:"smoothie"`
}

func (*SmoothieOrder) TypeMeta() *runtime.TypeMeta { return metaOf("SmoothieOrder") }

func (o *SmoothieOrder) Expand(reg *runtime.Registry, dst any) error {
	return runtime.Expand(reg, o, dst)
}

var (
	_ runtime.Computable = (*IngredientAmount)(nil)
	_ runtime.Computable = (*Smoothie)(nil)
	_ runtime.Expandable = (*BananaStrawberrySmoothie)(nil)
	_ runtime.Expandable = (*SmoothieOrder)(nil)
)
