package services

// Event names pushed to connected clients over the websocket hub.
const (
	EventTableUpdate = "table_update"
	EventOrderUpdate = "order_update"
	EventBoardResize = "board_resize"
)
