package sfx

// Equal-tempered pitches, rounded to whole Hz.
const (
	rest   = 0
	noteC4 = 262
	noteD4 = 294
	noteE4 = 330
	noteF4 = 349
	noteG4 = 392
	noteA4 = 440
	noteB4 = 494
	noteC5 = 523
	noteD5 = 587
	noteE5 = 659
	noteG5 = 784
)

var RailroadTune = []Note{
	{noteC4, 8}, {noteC4, 8}, {noteC4, 4}, {noteE4, 4}, {noteG4, 4}, {noteC5, -4}, {noteA4, 8},
	{noteG4, 2}, {rest, 8},
	{noteE4, 8}, {noteE4, 8}, {noteE4, 4}, {noteG4, 4}, {noteE4, 4}, {noteD4, -4}, {noteC4, 8},
	{noteD4, 2}, {rest, 4},
	{noteC4, 8}, {noteC4, 8}, {noteC4, 4}, {noteE4, 4}, {noteG4, 4}, {noteC5, -2},
	{noteA4, 4}, {noteA4, 4}, {noteC5, 4}, {noteB4, 4}, {noteA4, 4}, {noteG4, 1},
}

var WhistleStopTune = []Note{
	{noteG4, 8}, {noteA4, 8}, {noteB4, 8}, {noteD5, 4}, {noteB4, 8}, {noteD5, 4},
	{noteE5, -4}, {noteD5, 8}, {noteB4, 4}, {noteG4, 4}, {rest, 8},
	{noteA4, 8}, {noteB4, 8}, {noteA4, 8}, {noteG4, 4}, {noteE4, 8}, {noteD4, 4},
	{noteG4, 8}, {noteB4, 8}, {noteD5, 8}, {noteG5, -2},
	{noteF4, 16}, {noteG4, 1},
}
