package clean

//codec:value
type Point struct {
	x, y  int
	Label string `json:"label,omitempty"`
	cache string `json:"-"`
}

//codec:constructor
//codec:param x name abscissa
func NewPoint(x, y int) *Point { return &Point{x: x, y: y} }

func (p *Point) GetX() int { return p.x }

func (p *Point) GetY() int { return p.y }

func (p *Point) String() string { return p.cache }
