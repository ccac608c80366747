// Package jobs provides scheduled background tasks for the relay delivery
// service, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DeliveryDigestJob - periodically logs delivery counts per lifecycle
// status, giving operators a heartbeat of the system without a metrics stack
//
// Jobs are strictly read-only: scheduling never advances the delivery
// lifecycle, which only moves through the four explicit operations.
package jobs
