package joints

// NewTestBehavior exposes the random rig fixture to external tests.
var NewTestBehavior = newTestBehavior
