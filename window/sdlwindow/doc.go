// Package sdlwindow presents frames in an SDL2 window.
//
// The window is only available when built with the sdl tag. SDL must be
// driven from the main OS thread; callers lock it before calling New.
package sdlwindow
