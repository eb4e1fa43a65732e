package schedule

// Package schedule implements due-date-aware planning for manufacturing
// jobs. A greedy list scheduler places routing operations into dated
// work-center buckets, respecting staffing-derived daily capacity and
// blocked jobs, and exposes utilization, bottleneck and per-job
// explanation analytics over a produced result.
