package ziptie

// Test bridge: exposes unexported helpers to the ziptie_test package only.

// BundleActivitiesForTest exposes bundleActivities.
var BundleActivitiesForTest = bundleActivities

// ResidualActivitiesForTest exposes residualActivities.
var ResidualActivitiesForTest = residualActivities
