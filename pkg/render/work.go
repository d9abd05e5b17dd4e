package render

import (
	"sync"
	"sync/atomic"

	"github.com/joshvictor1024/go-xaos/pkg/fractal"
	"github.com/joshvictor1024/go-xaos/pkg/types"
)

// bandRows is the height of the unit of work handed to a worker.
const bandRows = 16

// band is a run of rows [y0, y1).
type band struct {
	y0, y1 int
}

// splitRows splits height rows into bands of n rows; the last one may be
// shorter.
func splitRows(height, n int) []band {
	if n <= 0 {
		panic("band height must be positive")
	}
	bands := make([]band, 0, (height+n-1)/n)
	for y := 0; y < height; y += n {
		bands = append(bands, band{y0: y, y1: min(y+n, height)})
	}
	return bands
}

// frameWork is everything a worker needs to fill one frame. cfg is a
// snapshot taken before the workers start.
type frameWork struct {
	cfg   *fractal.Config
	begin types.Point
	step  types.Point
	width int
	pix   []uint32
}

func (fw *frameWork) fillBand(b band) {
	for py := b.y0; py < b.y1; py++ {
		ci := fw.begin.Y + float64(py)*fw.step.Y
		row := fw.pix[py*fw.width : (py+1)*fw.width]
		for px := range row {
			cr := fw.begin.X + float64(px)*fw.step.X
			row[px] = fw.cfg.Color(cr, ci)
		}
	}
}

// fill computes every band, spreading them over up to workers goroutines.
func (fw *frameWork) fill(height, workers int) {
	bands := splitRows(height, bandRows)
	if workers <= 1 || len(bands) == 1 {
		for _, b := range bands {
			fw.fillBand(b)
		}
		return
	}

	var next atomic.Int64
	wg := new(sync.WaitGroup)
	for i := 0; i < min(workers, len(bands)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n := int(next.Add(1)) - 1
				if n >= len(bands) {
					return
				}
				fw.fillBand(bands[n])
			}
		}()
	}
	wg.Wait()
}
