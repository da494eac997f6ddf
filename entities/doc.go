// Package entities models the onchain objects the SDK reasons about:
// currencies, amounts, prices, pools, positions, routes and trades.
// All arithmetic is exact fraction math over big integers; nothing
// here touches the network.
package entities
