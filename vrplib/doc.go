// Package vrplib reads VRPLIB-format benchmark instances into validated
// problem data.
//
// # Supported subset
//
// Header keys: NAME, COMMENT, TYPE (CVRP / VRPTW), DIMENSION, CAPACITY,
// VEHICLES, EDGE_WEIGHT_TYPE (EUC_2D or EXPLICIT), EDGE_WEIGHT_FORMAT
// (FULL_MATRIX). Sections: NODE_COORD_SECTION, DEMAND_SECTION,
// TIME_WINDOW_SECTION, SERVICE_TIME_SECTION, EDGE_WEIGHT_SECTION,
// DEPOT_SECTION (terminated by -1), EOF.
//
// Node ids are 1-based in the file; depots listed in DEPOT_SECTION come
// first in the flat index space, clients follow in id order. EUC_2D
// distances round the Euclidean norm to the nearest integer, the VRPLIB
// convention. Durations equal distances. The fleet is one vehicle type:
// VEHICLES of capacity CAPACITY (count defaults to the client count).
//
// Unknown keys and sections are rejected with sentinel errors rather than
// skipped, so silent misreads cannot produce a wrong benchmark.
package vrplib
