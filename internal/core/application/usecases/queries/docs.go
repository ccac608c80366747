// Package queries implements the read side of the application layer.
//
// Query handlers bypass the domain model and read directly from the
// database with raw SQL, returning flat response structs shaped for
// presentation. They never mutate state, so they run outside the unit
// of work used by commands.
//
// # Available Queries
//
// 1. GetDeliveryByIDQuery - full tracking view of a single delivery,
// including its relay legs
//
// 2. GetShipperDeliveriesQuery - all deliveries initiated by a shipper
//
// 3. GetCourierActiveDeliveriesQuery - deliveries a courier currently
// carries
//
// 4. GetDeliveryStatsQuery - counts of deliveries per active status,
// consumed by the periodic digest job
package queries
