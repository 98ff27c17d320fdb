/*
Package presenter models the list page of one resource kind as a single
state machine.

A page is always in exactly one of four states:

	Idle
	AddEditOpen{Draft, Errors}
	DetailsOpen{Record}
	DeleteConfirmOpen{Record}

so two dialogs can never be open at once. Transitions that do not apply to
the current state return ErrInvalidTransition and leave the page untouched.

Backend calls run under the configured timeout. Failures that the user can
act on (validation) stay inside the dialog; everything else becomes a Notice.
*/
package presenter
