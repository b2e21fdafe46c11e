// Package vrplib - the instance reader.
package vrplib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/vrp"
)

// Sentinel errors.
var (
	// ErrBadFormat indicates a malformed line or section.
	ErrBadFormat = errors.New("vrplib: malformed instance")

	// ErrUnsupported indicates a header value outside the supported subset.
	ErrUnsupported = errors.New("vrplib: unsupported instance feature")

	// ErrMissingSection indicates a required section was absent.
	ErrMissingSection = errors.New("vrplib: missing section")
)

// instance accumulates the file's raw content before assembly.
type instance struct {
	name       string
	dimension  int
	capacity   int64
	vehicles   int
	weightType string
	weightFmt  string

	coords   [][2]int64
	demands  []int64
	twEarly  []int64
	twLate   []int64
	service  []int64
	explicit [][]int64
	depots   []int
	hasTW    bool
}

// ReadFile parses the instance at path.
func ReadFile(path string) (*vrp.ProblemData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Read parses an instance from r and assembles validated problem data.
func Read(r io.Reader) (*vrp.ProblemData, error) {
	ins := &instance{weightType: "EUC_2D"}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "EOF" {
			continue
		}
		if key, value, ok := splitHeader(line); ok {
			if err := ins.header(key, value); err != nil {
				return nil, err
			}
			continue
		}
		if err := ins.section(line, sc); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return ins.assemble()
}

// splitHeader recognises "KEY : VALUE" lines.
func splitHeader(line string) (string, string, bool) {
	if !strings.Contains(line, ":") {
		return "", "", false
	}
	parts := strings.SplitN(line, ":", 2)

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// header records one header key.
func (ins *instance) header(key, value string) error {
	var err error
	switch key {
	case "NAME":
		ins.name = value
	case "COMMENT":
		// informational only
	case "TYPE":
		if value != "CVRP" && value != "VRPTW" {
			return fmt.Errorf("%w: TYPE %s", ErrUnsupported, value)
		}
	case "DIMENSION":
		ins.dimension, err = strconv.Atoi(value)
	case "CAPACITY":
		ins.capacity, err = strconv.ParseInt(value, 10, 64)
	case "VEHICLES":
		ins.vehicles, err = strconv.Atoi(value)
	case "EDGE_WEIGHT_TYPE":
		if value != "EUC_2D" && value != "EXPLICIT" {
			return fmt.Errorf("%w: EDGE_WEIGHT_TYPE %s", ErrUnsupported, value)
		}
		ins.weightType = value
	case "EDGE_WEIGHT_FORMAT":
		if value != "FULL_MATRIX" {
			return fmt.Errorf("%w: EDGE_WEIGHT_FORMAT %s", ErrUnsupported, value)
		}
		ins.weightFmt = value
	default:
		return fmt.Errorf("%w: header %s", ErrUnsupported, key)
	}
	if err != nil {
		return fmt.Errorf("%w: header %s", ErrBadFormat, key)
	}

	return nil
}

// section dispatches one section body.
func (ins *instance) section(name string, sc *bufio.Scanner) error {
	if ins.dimension <= 0 {
		return fmt.Errorf("%w: DIMENSION before sections", ErrMissingSection)
	}
	n := ins.dimension

	switch name {
	case "NODE_COORD_SECTION":
		ins.coords = make([][2]int64, n)

		return readRows(sc, n, 3, func(id int, fields []int64) {
			ins.coords[id] = [2]int64{fields[0], fields[1]}
		})
	case "DEMAND_SECTION":
		ins.demands = make([]int64, n)

		return readRows(sc, n, 2, func(id int, fields []int64) {
			ins.demands[id] = fields[0]
		})
	case "TIME_WINDOW_SECTION":
		ins.twEarly = make([]int64, n)
		ins.twLate = make([]int64, n)
		ins.hasTW = true

		return readRows(sc, n, 3, func(id int, fields []int64) {
			ins.twEarly[id], ins.twLate[id] = fields[0], fields[1]
		})
	case "SERVICE_TIME_SECTION":
		ins.service = make([]int64, n)

		return readRows(sc, n, 2, func(id int, fields []int64) {
			ins.service[id] = fields[0]
		})
	case "EDGE_WEIGHT_SECTION":
		return ins.readExplicit(sc)
	case "DEPOT_SECTION":
		return ins.readDepots(sc)
	default:
		return fmt.Errorf("%w: section %s", ErrUnsupported, name)
	}
}

// readRows parses n whitespace-separated rows of fixed width; the first
// field is the 1-based node id.
func readRows(sc *bufio.Scanner, n, width int, set func(id int, fields []int64)) error {
	for i := 0; i < n; i++ {
		fields, err := nextFields(sc)
		if err != nil {
			return err
		}
		if len(fields) != width {
			return ErrBadFormat
		}
		id := int(fields[0]) - 1
		if id < 0 || id >= n {
			return ErrBadFormat
		}
		set(id, fields[1:])
	}

	return nil
}

// readExplicit parses a full n×n matrix of weights.
func (ins *instance) readExplicit(sc *bufio.Scanner) error {
	n := ins.dimension
	ins.explicit = make([][]int64, n)

	// The matrix body is free-form whitespace; gather n² numbers.
	values := make([]int64, 0, n*n)
	for len(values) < n*n {
		fields, err := nextFields(sc)
		if err != nil {
			return err
		}
		values = append(values, fields...)
	}
	if len(values) != n*n {
		return ErrBadFormat
	}
	for i := 0; i < n; i++ {
		ins.explicit[i] = values[i*n : (i+1)*n]
	}

	return nil
}

// readDepots parses depot ids until the -1 terminator.
func (ins *instance) readDepots(sc *bufio.Scanner) error {
	for {
		fields, err := nextFields(sc)
		if err != nil {
			return err
		}
		for _, f := range fields {
			if f == -1 {
				if len(ins.depots) == 0 {
					return fmt.Errorf("%w: DEPOT_SECTION", ErrMissingSection)
				}

				return nil
			}
			ins.depots = append(ins.depots, int(f)-1)
		}
	}
}

// nextFields scans the next non-empty line into int64 fields.
func nextFields(sc *bufio.Scanner) ([]int64, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		raw := strings.Fields(line)
		out := make([]int64, len(raw))
		for i, tok := range raw {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, ErrBadFormat
			}
			out[i] = int64(math.Round(v))
		}

		return out, nil
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return nil, ErrBadFormat
}

// assemble validates the accumulated content into problem data.
func (ins *instance) assemble() (*vrp.ProblemData, error) {
	n := ins.dimension
	if n <= 0 {
		return nil, fmt.Errorf("%w: DIMENSION", ErrMissingSection)
	}
	if len(ins.depots) == 0 {
		return nil, fmt.Errorf("%w: DEPOT_SECTION", ErrMissingSection)
	}

	dist, err := ins.buildMatrix()
	if err != nil {
		return nil, err
	}

	// Depots first, then clients in file order.
	order := append([]int(nil), ins.depots...)
	for id := 0; id < n; id++ {
		if !lo.Contains(ins.depots, id) {
			order = append(order, id)
		}
	}

	// Remap the matrix into the depots-first index space.
	remapped := vrp.NewMatrix(n)
	for i, oi := range order {
		for j, oj := range order {
			remapped.Set(i, j, dist.At(oi, oj))
		}
	}

	depots := make([]vrp.Location, 0, len(ins.depots))
	clients := make([]vrp.Location, 0, n-len(ins.depots))
	for pos, id := range order {
		loc := ins.location(id)
		if pos < len(ins.depots) {
			loc.Delivery, loc.Pickup = nil, nil
			loc.Required = false
			depots = append(depots, loc)
			continue
		}
		clients = append(clients, loc)
	}

	vt := vrp.NewVehicleType(ins.fleetSize(), []int64{ins.capacity})
	vt.Name = ins.name

	return vrp.NewProblemData(
		depots, clients,
		[]vrp.VehicleType{vt},
		nil,
		[]*vrp.Matrix{remapped},
		[]*vrp.Matrix{remapped},
	)
}

// location builds one location from the parsed sections.
func (ins *instance) location(id int) vrp.Location {
	loc := vrp.NewClient(0, 0)
	if ins.coords != nil {
		loc.X, loc.Y = ins.coords[id][0], ins.coords[id][1]
	}
	if ins.demands != nil {
		loc.Delivery = []int64{ins.demands[id]}
	}
	if ins.hasTW {
		loc.TwEarly, loc.TwLate = ins.twEarly[id], ins.twLate[id]
	} else {
		loc.TwLate = segment.Unbounded
	}
	if ins.service != nil {
		loc.ServiceDuration = ins.service[id]
	}
	loc.Name = strconv.Itoa(id + 1)

	return loc
}

// buildMatrix resolves distances per the header.
func (ins *instance) buildMatrix() (*vrp.Matrix, error) {
	n := ins.dimension
	if ins.weightType == "EXPLICIT" {
		if ins.explicit == nil {
			return nil, fmt.Errorf("%w: EDGE_WEIGHT_SECTION", ErrMissingSection)
		}

		return vrp.MatrixFromRows(ins.explicit)
	}

	if ins.coords == nil {
		return nil, fmt.Errorf("%w: NODE_COORD_SECTION", ErrMissingSection)
	}
	m := vrp.NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dx := float64(ins.coords[i][0] - ins.coords[j][0])
			dy := float64(ins.coords[i][1] - ins.coords[j][1])
			m.Set(i, j, int64(math.Round(math.Hypot(dx, dy))))
		}
	}

	return m, nil
}

// fleetSize resolves the vehicle count: the VEHICLES header, defaulting to
// one vehicle per client.
func (ins *instance) fleetSize() int {
	if ins.vehicles > 0 {
		return ins.vehicles
	}

	return ins.dimension - len(ins.depots)
}
