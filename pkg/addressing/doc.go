// Package addressing models semantic addressing intent and turns it into
// MQTT subscription patterns.
//
// Agents never agree on topic strings directly. A sender states a
// Destination (broadcast, multicast or unicast) and a receiver states a
// Source; both sides derive the concrete topic independently from the same
// naming rules, so a message published for a destination lands on every
// subscription built from the matching source.
//
// The destination side of the naming protocol lives with the outgoing
// message properties in package message, because the topic depends on the
// message role. The subscription side lives here: EventSubscription,
// RequestSubscription and ResponseSubscription each wrap a Source and
// resolve it to a subscribe pattern, where "+" is the broker's single-level
// wildcard. A SharedGroup turns a pattern into an MQTT shared subscription
// ("$share/{group}/{pattern}") so that delivery is load-shared among the
// group's subscribers.
package addressing
