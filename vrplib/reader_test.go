// Package vrplib_test exercises the instance reader against inline files.
package vrplib_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/vrplib"
)

const smallCVRP = `NAME : toy4
COMMENT : four nodes on a line
TYPE : CVRP
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 30
VEHICLES : 2
NODE_COORD_SECTION
1 0 0
2 10 0
3 20 0
4 30 0
DEMAND_SECTION
1 0
2 10
3 10
4 10
DEPOT_SECTION
1
-1
EOF
`

func TestRead_SmallCVRP(t *testing.T) {
	data, err := vrplib.Read(strings.NewReader(smallCVRP))
	require.NoError(t, err)

	require.Equal(t, 1, data.NumDepots())
	require.Equal(t, 3, data.NumClients())
	require.Equal(t, 2, data.NumVehicles())
	require.Equal(t, 1, data.NumLoadDimensions())

	vt := data.VehicleType(0)
	require.Equal(t, []int64{30}, vt.Capacity)
	require.Equal(t, "toy4", vt.Name)

	// Rounded Euclidean distances on the remapped index space.
	require.Equal(t, int64(10), data.Dist(0, 0, 1))
	require.Equal(t, int64(30), data.Dist(0, 0, 3))
	require.Equal(t, int64(10), data.Dur(0, 2, 3))

	require.Equal(t, []int64{10}, data.Location(1).Delivery)
	require.True(t, data.Location(1).Required)
}

func TestRead_ExplicitMatrix(t *testing.T) {
	text := `NAME : explicit3
TYPE : CVRP
DIMENSION : 3
EDGE_WEIGHT_TYPE : EXPLICIT
EDGE_WEIGHT_FORMAT : FULL_MATRIX
CAPACITY : 10
EDGE_WEIGHT_SECTION
0 5 7
5 0 3
7 3 0
DEMAND_SECTION
1 0
2 1
3 1
DEPOT_SECTION
1
-1
EOF
`
	data, err := vrplib.Read(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, int64(5), data.Dist(0, 0, 1))
	require.Equal(t, int64(3), data.Dist(0, 1, 2))
}

func TestRead_TimeWindows(t *testing.T) {
	text := `NAME : tw3
TYPE : VRPTW
DIMENSION : 3
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 10
NODE_COORD_SECTION
1 0 0
2 5 0
3 9 0
DEMAND_SECTION
1 0
2 1
3 1
TIME_WINDOW_SECTION
1 0 100
2 10 20
3 0 50
SERVICE_TIME_SECTION
1 0
2 2
3 2
DEPOT_SECTION
1
-1
EOF
`
	data, err := vrplib.Read(strings.NewReader(text))
	require.NoError(t, err)

	loc := data.Location(1)
	require.Equal(t, int64(10), loc.TwEarly)
	require.Equal(t, int64(20), loc.TwLate)
	require.Equal(t, int64(2), loc.ServiceDuration)
}

func TestRead_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"unknown section", "DIMENSION : 2\nBOGUS_SECTION\n", vrplib.ErrUnsupported},
		{"unsupported weights", "EDGE_WEIGHT_TYPE : GEO\n", vrplib.ErrUnsupported},
		{"missing depot", "DIMENSION : 2\nNODE_COORD_SECTION\n1 0 0\n2 1 1\nEOF\n", vrplib.ErrMissingSection},
		{"section before dimension", "NODE_COORD_SECTION\n1 0 0\n", vrplib.ErrMissingSection},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := vrplib.Read(strings.NewReader(tc.text))
			require.ErrorIs(t, err, tc.want)
		})
	}
}
