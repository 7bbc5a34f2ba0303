// Package fleet contains the Driver and Vehicle aggregates.
//
// Drivers and vehicles are assignment resources: a delivery or a route
// holds them while work is in progress and releases them when the work
// reaches a terminal state. The aggregates only track availability; HR
// and maintenance concerns live elsewhere.
package fleet
