package kaboom

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

type watchedSprite struct {
	name string
	conf SpriteConf
}

// assetWatcher re-decodes sprites whose source files change on disk.
type assetWatcher struct {
	w       *fsnotify.Watcher
	sprites map[string]watchedSprite // keyed by slash path relative to root
}

// Watch starts watching the asset root. Sprites loaded before or after the
// call are reloaded on the next Poll after their file is written.
func (a *Assets) Watch() error {
	if a.watch != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(a.root); err != nil {
		w.Close()
		return err
	}
	a.watch = &assetWatcher{w: w, sprites: make(map[string]watchedSprite)}
	for src, ws := range a.pendingWatch {
		a.watchSpriteAt(src, ws)
	}
	a.pendingWatch = nil
	a.log.Info("watching assets", "root", a.root)
	return nil
}

// Close stops watching.
func (a *Assets) Close() error {
	if a.watch == nil {
		return nil
	}
	err := a.watch.w.Close()
	a.watch = nil
	return err
}

func (a *Assets) watchSprite(name, src string, conf SpriteConf) {
	ws := watchedSprite{name: name, conf: conf}
	if a.watch == nil {
		if a.pendingWatch == nil {
			a.pendingWatch = make(map[string]watchedSprite)
		}
		a.pendingWatch[src] = ws
		return
	}
	a.watchSpriteAt(src, ws)
}

func (a *Assets) watchSpriteAt(src string, ws watchedSprite) {
	a.watch.sprites[filepath.ToSlash(filepath.Clean(src))] = ws
	if dir := filepath.Dir(filepath.Join(a.root, filepath.FromSlash(src))); dir != filepath.Clean(a.root) {
		if err := a.watch.w.Add(dir); err != nil {
			a.log.Warn("watch asset dir", "dir", dir, "err", err)
		}
	}
}

// pollWatch drains pending file events without blocking and schedules a
// reload for every changed sprite.
func (a *Assets) pollWatch() {
	if a.watch == nil {
		return
	}
	for {
		select {
		case ev, ok := <-a.watch.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			a.reloadPath(ev.Name)
		case err, ok := <-a.watch.w.Errors:
			if !ok {
				return
			}
			a.log.Warn("asset watcher", "err", err)
		default:
			return
		}
	}
}

func (a *Assets) reloadPath(full string) {
	rel, err := filepath.Rel(a.root, full)
	if err != nil {
		return
	}
	src := filepath.ToSlash(rel)
	ws, ok := a.watch.sprites[src]
	if !ok {
		return
	}
	a.spawn(func() func() {
		img, err := a.decodeImage(src)
		return func() {
			if err != nil {
				a.log.Warn("reload sprite", "name", ws.name, "err", err)
				return
			}
			a.sprites[ws.name] = newSpriteData(NewTexture(img), ws.conf)
			a.log.Info("reloaded sprite", "name", ws.name)
		}
	})
}
