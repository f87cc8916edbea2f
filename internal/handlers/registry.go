package handlers

// AppHandlers holds every handler the router wires up.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	NoteHandler     *NoteHandler
	CategoryHandler *CategoryHandler
	TagHandler      *TagHandler
}
