// meta/meta.go
package meta

// VARIANT is played when neither the config nor the command line names one.
const VARIANT = "checkers"

// GAMES defines the number of games in a match.
const GAMES = 10

// MAX_MOVES stops a game that has not been decided after this many moves.
const MAX_MOVES = 300

// DEPTH defines how many turns the AI looks ahead.
const DEPTH = 4

// ALGORITHM is the search the AI uses by default.
const ALGORITHM = "negamax-ab"

// OUT is the directory match records are written to.
const OUT = "results"
