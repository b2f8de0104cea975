package geometry

type Color string

const (
	White  Color = "#FFFFFF"
	Blue   Color = "#58C4DD"
	Green  Color = "#83C167"
	Red    Color = "#FC6255"
	Yellow Color = "#FFFF00"
	Orange Color = "#FF862F"
	Purple Color = "#9A72AC"
)

// Palette assigns a colour to each role a primitive can play.
type Palette struct {
	Data       Color `yaml:"data"`
	GroupData  Color `yaml:"group_data"`
	Text       Color `yaml:"text"`
	Axes       Color `yaml:"axes"`
	GrandMean  Color `yaml:"grand_mean"`
	Fitted     Color `yaml:"fitted"`
	GroupMean  Color `yaml:"group_mean"`
	Total      Color `yaml:"total"`
	Residual   Color `yaml:"residual"`
	Model      Color `yaml:"model"`
	ToGroup    Color `yaml:"to_group_mean"`
	ToGrand    Color `yaml:"to_grand_mean"`
	GroupGrand Color `yaml:"group_to_grand"`
	Normal     Color `yaml:"normal"`
	ChiSquared Color `yaml:"chi_squared"`
	F          Color `yaml:"f"`
	Critical   Color `yaml:"critical"`
}

// DefaultPalette is the blackboard colour scheme used by every scene.
func DefaultPalette() Palette {
	return Palette{
		Data:       Blue,
		GroupData:  Blue,
		Text:       White,
		Axes:       White,
		GrandMean:  Green,
		Fitted:     Red,
		GroupMean:  Purple,
		Total:      Yellow,
		Residual:   Orange,
		Model:      Purple,
		ToGroup:    Red,
		ToGrand:    Green,
		GroupGrand: Yellow,
		Normal:     Blue,
		ChiSquared: Red,
		F:          Blue,
		Critical:   Orange,
	}
}

// Merge fills the empty roles of p from base.
func (p Palette) Merge(base Palette) Palette {
	pick := func(c, d Color) Color {
		if c == "" {
			return d
		}
		return c
	}
	return Palette{
		Data:       pick(p.Data, base.Data),
		GroupData:  pick(p.GroupData, base.GroupData),
		Text:       pick(p.Text, base.Text),
		Axes:       pick(p.Axes, base.Axes),
		GrandMean:  pick(p.GrandMean, base.GrandMean),
		Fitted:     pick(p.Fitted, base.Fitted),
		GroupMean:  pick(p.GroupMean, base.GroupMean),
		Total:      pick(p.Total, base.Total),
		Residual:   pick(p.Residual, base.Residual),
		Model:      pick(p.Model, base.Model),
		ToGroup:    pick(p.ToGroup, base.ToGroup),
		ToGrand:    pick(p.ToGrand, base.ToGrand),
		GroupGrand: pick(p.GroupGrand, base.GroupGrand),
		Normal:     pick(p.Normal, base.Normal),
		ChiSquared: pick(p.ChiSquared, base.ChiSquared),
		F:          pick(p.F, base.F),
		Critical:   pick(p.Critical, base.Critical),
	}
}
