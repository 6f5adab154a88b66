// internal/status/constants.go
package status

// Power/radio controller block layout.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the number of holding registers read per poll.
const SlotsPerBlock = 4

// ---- SLOT INDICES ----

// SlotBatteryPercent holds the charge percentage (0..100).
const SlotBatteryPercent = 0

// SlotLinkState holds the wireless link state.
const SlotLinkState = 1

// SlotCharging holds the charger state.
const SlotCharging = 2

// Slot 3 is reserved.
const SlotReserved = 3

// ---- LINK STATES ----

// LinkDown means no paired phone.
const LinkDown uint16 = 0

// LinkUp means the phone link is established.
const LinkUp uint16 = 1

// ---- LIMITS ----

// BatteryMax is the largest meaningful battery register value.
const BatteryMax = 100
