// Package planner assembles position manager action plans: ordered
// action opcodes with their ABI-encoded parameters, finalized into
// the unlock data consumed by modifyLiquidities.
package planner
